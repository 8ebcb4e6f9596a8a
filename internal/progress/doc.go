// Package progress оценивает прогресс run'а во время работы solver'а.
//
// Solver — блокирующий вызов без progress-callback'а, поэтому прогресс
// синтезируется по времени: Estimate(elapsed, expected) — вогнутая
// неубывающая кривая с потолком ниже 100 (95 для долгих запусков,
// 99 для коротких). До 100 прогресс доводит только терминальная
// запись воркера.
package progress
