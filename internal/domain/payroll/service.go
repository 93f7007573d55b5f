package payroll

import "context"

type Service interface {
	// Generate creates draft payroll records for every active employee in
	// the period. Existing records are skipped, so reruns are safe.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)

	Get(ctx context.Context, id string) (RecordResponse, error)
	List(ctx context.Context, filter ListFilter) (ListRecordsResponse, error)
	MarkPaid(ctx context.Context, id string) error
}
