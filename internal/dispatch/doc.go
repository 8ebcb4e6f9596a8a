// Package dispatch отвечает за приём кейсов: регистрация запуска,
// начальная запись статуса и публикация задания в очередь.
package dispatch
