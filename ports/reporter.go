package ports

// ReporterPort renders a completed run for a downstream consumer.
// Implementations decide the output shape (text table, workbook bytes,
// markdown); the core never formats results itself.
type ReporterPort interface {
	Report(run StoredRun) ([]byte, error)
}
