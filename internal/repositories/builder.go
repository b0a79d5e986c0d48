package repositories

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder; Postgres wants $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
