// Package cli реализует инструмент командной строки Rota.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Rota API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для отправки кейсов, опроса статуса и работы
// с папками результатов.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Rota API. Инкапсулирует все HTTP-запросы,
// парсинг ответов и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	run, err := client.GetStatus(runID)
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: rota results list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - run: submit, status, stop
//   - results: list, download, delete
//
// Каждая группа создаётся через фабричную функцию (NewRunCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
