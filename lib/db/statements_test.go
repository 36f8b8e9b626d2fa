package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestExecStatementsInTransaction(t *testing.T) {
	{
		// No statements.
		mockDB, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer mockDB.Close()

		assert.ErrorContains(t, ExecStatementsInTransaction(context.Background(), NewStore(mockDB), nil), "statements is empty")
	}
	{
		// A single statement runs without a transaction.
		mockDB, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM db\.schema\.tbl`).WillReturnResult(sqlmock.NewResult(0, 3))

		assert.NoError(t, ExecStatementsInTransaction(context.Background(), NewStore(mockDB), []string{"DELETE FROM db.schema.tbl"}))
		assert.NoError(t, mock.ExpectationsWereMet())
	}
	{
		// Several statements commit atomically.
		mockDB, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM db\.schema\.tbl WHERE color = 'red'`).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`INSERT INTO db\.schema\.tbl`).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		statements := []string{
			"DELETE FROM db.schema.tbl WHERE color = 'red'",
			"INSERT INTO db.schema.tbl (a) VALUES ('1')",
		}
		assert.NoError(t, ExecStatementsInTransaction(context.Background(), NewStore(mockDB), statements))
		assert.NoError(t, mock.ExpectationsWereMet())
	}
	{
		// A mid-transaction failure rolls back and surfaces the failing statement.
		mockDB, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM db\.schema\.tbl`).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`INSERT INTO db\.schema\.tbl`).WillReturnError(fmt.Errorf("out of disk"))
		mock.ExpectRollback()

		statements := []string{
			"DELETE FROM db.schema.tbl WHERE color = 'red'",
			"INSERT INTO db.schema.tbl (a) VALUES ('1')",
		}
		err = ExecStatementsInTransaction(context.Background(), NewStore(mockDB), statements)
		assert.ErrorContains(t, err, "out of disk")
		assert.ErrorContains(t, err, "INSERT INTO db.schema.tbl")
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}
