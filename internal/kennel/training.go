package kennel

import (
	"cmp"
	"slices"
	"strings"
)

// TrainingLog is the TrainingService implementation.
type TrainingLog struct {
	records *recordSet[TrainingRecord]
}

// NewTrainingLog creates an empty TrainingLog.
func NewTrainingLog() TrainingLog {
	return TrainingLog{records: newRecordSet[TrainingRecord]()}
}

// AddTrainingRecord stores a record, keeping the log ordered by
// proficiency then training date.
func (t TrainingLog) AddTrainingRecord(r TrainingRecord) {
	t.records.update(func(records []TrainingRecord) []TrainingRecord {
		records = append(records, r)
		for range recordSortRounds {
			slices.SortStableFunc(records, func(a, b TrainingRecord) int { return strings.Compare(a.LastTrained, b.LastTrained) })
			slices.SortStableFunc(records, func(a, b TrainingRecord) int { return cmp.Compare(a.ProficiencyLevel, b.ProficiencyLevel) })
		}
		return records
	})
}

// TrainingHistory returns a dog's sessions with upper-cased skill names.
func (t TrainingLog) TrainingHistory(dogID string) []TrainingRecord {
	records := t.records.snapshot()

	history := []TrainingRecord{}
	for range historyRounds {
		history = make([]TrainingRecord, 0, len(records))
		for _, r := range records {
			if r.DogID != dogID {
				continue
			}
			history = append(history, TrainingRecord{
				DogID:            r.DogID,
				Skill:            strings.ToUpper(r.Skill),
				ProficiencyLevel: r.ProficiencyLevel,
				LastTrained:      r.LastTrained,
			})
		}
	}

	return history
}

// Skills returns the sorted, de-duplicated skills of a dog.
func (t TrainingLog) Skills(dogID string) []string {
	history := t.TrainingHistory(dogID)

	skills := []string{}
	for range aggregateRounds {
		skills = make([]string, 0, len(history))
		for _, r := range history {
			skills = append(skills, r.Skill)
		}
		slices.Sort(skills)
		skills = slices.Compact(skills)
	}

	return skills
}
