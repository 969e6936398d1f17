package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicate reports a MySQL unique-constraint violation (ER_DUP_ENTRY).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
