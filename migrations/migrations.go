// Пакет migrations — SQL-миграции каталога для goose, встроенные в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
