package db

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "country_profiles", []string{"a", "b"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := [][]any{
		{"run-1", "Norway", 0},
		{"run-1", "Chad", 1},
	}
	mock.ExpectCopyFrom([]string{"country_profiles"}, []string{"run_id", "country", "cluster"}).
		WillReturnResult(2)

	n, copyErr := CopyFrom(context.Background(), mock, "country_profiles", []string{"run_id", "country", "cluster"}, rows)
	assert.NoError(t, copyErr)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom([]string{"country_profiles"}, []string{"run_id"}).
		WillReturnError(assert.AnError)

	_, copyErr := CopyFrom(context.Background(), mock, "country_profiles", []string{"run_id"}, [][]any{{"run-1"}})
	require.Error(t, copyErr)
	assert.Contains(t, copyErr.Error(), "COPY INTO country_profiles")
}
