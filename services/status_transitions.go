package services

import (
	"github.com/MeiyuTech/aet-backend/entity"
)

// Canonical status flow. Forward only: submitted -> in_review ->
// completed, with cancellation possible until completion. Anything else
// needs an explicit admin override on the staged change.
var statusFlow = map[string][]string{
	entity.StatusSubmitted: {entity.StatusInReview, entity.StatusCancelled},
	entity.StatusInReview:  {entity.StatusCompleted, entity.StatusCancelled},
	entity.StatusCompleted: {},
	entity.StatusCancelled: {},
}

func KnownStatus(s string) bool {
	_, ok := statusFlow[s]
	return ok
}

func ValidTransition(from, to string) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}
