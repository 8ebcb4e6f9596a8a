// Package registry управляет папками результатов в ObjectStore.
//
// Папка результатов — префикс result_<N>/ с артефактами solver'а
// (result.json, schedule.csv, input_case.json) и metadata.json,
// который пишется последним и служит маркером полноты.
//
// Нумерация: сканирование существующих папок, max(N)+1. Выделение
// номера сознательно не атомарно — см. комментарий к Registry.
package registry
