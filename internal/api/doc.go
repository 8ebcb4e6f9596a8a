// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go        — Handler с DI (dispatcher, control, registry, logger)
//   - routes.go         — регистрация маршрутов
//   - middleware.go     — middleware (logging, recovery)
//   - response.go       — унифицированные JSON-ответы и обработка ошибок
//   - dto.go            — Data Transfer Objects (request/response)
//   - run_handler.go    — обработчики для /solve, /status, /runs
//   - result_handler.go — обработчики для /results
//
// API предоставляет REST endpoints для постановки кейсов, опроса
// статуса, остановки запусков и работы с папками результатов.
package api
