// Package lifecycle реализует машину состояний run'а.
//
// Допустимые переходы:
//
//	queued → starting → running → completed | failed
//	       ↘ stopped (из любого нетерминального)
//
// Недопустимые переходы (запись в терминальный run, откат прогресса)
// молча игнорируются: писатели не координируются между собой, и
// громкая ошибка здесь дала бы только шум без возможности исправления.
package lifecycle
