// Package statusstore хранит записи о состоянии run'ов.
//
// Запись — JSON-документ runs/<run_id>/status.json в ObjectStore.
// Все компоненты (диспетчер, воркер, эстиматор прогресса, контроллер
// остановки) — равноправные писатели с перезаписью целой записи;
// защита от регрессий прогресса живёт уровнем выше, в lifecycle.
//
// Локальный кэш (cache.go) используется ТОЛЬКО как мост между submit
// и первой видимой durable-записью, никогда — вместо неё.
package statusstore
