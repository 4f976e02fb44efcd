package engine

import (
	"github.com/samber/lo"

	"github.com/mbelyaev/ferry/internal/models"
)

// Aggregate partitions settled outcomes into the batch result. Pure; every
// outcome lands in exactly one partition.
func Aggregate(outcomes []models.Outcome) models.BatchResult {
	succeeded, failed := lo.FilterReject(outcomes, func(o models.Outcome, _ int) bool {
		return o.OK
	})
	return models.BatchResult{Succeeded: succeeded, Failed: failed}
}
