package project

import (
	"sort"
	"time"
)

// changedFields returns the names of the editable fields that differ
// between a and b, in display order.
func changedFields(a, b *Project) []string {
	var changed []string
	add := func(field string, differs bool) {
		if differs {
			changed = append(changed, field)
		}
	}

	add(FieldDescription, a.Description != b.Description)
	add(FieldCollaborators, !sameIDs(a.CollaboratorIDs, b.CollaboratorIDs))
	add(FieldGeneralObjectives, a.GeneralObjectives != b.GeneralObjectives)
	add(FieldSpecificObjectives, a.SpecificObjectives != b.SpecificObjectives)
	add(FieldScope, a.Scope != b.Scope)
	add(FieldLimitations, a.Limitations != b.Limitations)
	add(FieldBudget, !a.EstimatedBudget.Equal(b.EstimatedBudget))
	add(FieldSchedule, a.TentativeSchedule != b.TentativeSchedule)
	add(FieldResources, a.RequiredResources != b.RequiredResources)
	add(FieldBeneficiaries, a.ExpectedBeneficiaries != b.ExpectedBeneficiaries)
	add(FieldIndicators, a.SuccessIndicators != b.SuccessIndicators)
	add(FieldState, a.State != b.State)
	add(FieldCompletion, a.CompletionPercentage != b.CompletionPercentage)
	add(FieldEstimatedStart, !sameDate(a.EstimatedStart, b.EstimatedStart))
	add(FieldEstimatedEnd, !sameDate(a.EstimatedEnd, b.EstimatedEnd))
	add(FieldActualEnd, !sameDate(a.ActualEnd, b.ActualEnd))
	return changed
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// sameIDs compares two ID lists ignoring order.
func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
