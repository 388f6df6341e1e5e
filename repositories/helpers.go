package repositories

import (
	"database/sql"
	"fmt"
)

// checkAffectedRows возвращает missing, если UPDATE/DELETE не затронул ни
// одной строки. Вызывающий сам выбирает подходящий сентинел: "не найдено"
// либо "не в ожидаемом статусе".
func checkAffectedRows(result sql.Result, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return missing
	}
	return nil
}
