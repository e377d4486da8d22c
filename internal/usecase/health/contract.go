package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DatasetChecker checks that the CSV datasets are readable.
type DatasetChecker interface {
	Check(ctx context.Context) error
}
