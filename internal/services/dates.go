package services

import "time"

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
