// Package shift matches order acceptance times against externally managed
// work-session windows.
package shift

import (
	"time"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/entity"
)

// Resolve returns the ID of the shift whose window contains the acceptance
// time (bounds inclusive). Returns common.ErrShiftNotFound when no window
// matches and common.ErrShiftAmbiguous when more than one does; both are
// surfaced to the caller rather than masked.
func Resolve(acceptedAt time.Time, shifts []entity.Shift) (int, error) {
	matched := -1
	for _, s := range shifts {
		if acceptedAt.Before(s.Start) || acceptedAt.After(s.End) {
			continue
		}
		if matched >= 0 {
			return 0, common.ErrShiftAmbiguous
		}
		matched = s.ID
	}
	if matched < 0 {
		return 0, common.ErrShiftNotFound
	}
	return matched, nil
}
