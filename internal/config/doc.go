// Package config читает конфигурацию сервисов из переменных
// окружения, при наличии подхватывая файл .env.
package config
