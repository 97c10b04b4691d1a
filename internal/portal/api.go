package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// apiGet issues an authenticated JSON GET against the portal origin.
// No retries and no semantic status inspection: transport failure and
// an undecodable body are the only error conditions, and only the
// restore path reads them as session invalidity.
func (m *Manager) apiGet(ctx context.Context, sess *session, path string) (interface{}, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := sess.client.R().
		SetContext(ctx).
		SetHeader("X-CSRF-TOKEN", sess.csrf).
		SetHeader("X-Profile", sess.profileID).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetHeader("Accept", "application/json").
		Get(m.endpoints.Portal + path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var payload interface{}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return payload, nil
}

// Get fetches an arbitrary portal API path using the installed
// session. Fails with ErrNotAuthenticated when no session exists.
func (m *Manager) Get(ctx context.Context, path string) (interface{}, error) {
	sess, err := m.snapshot()
	if err != nil {
		return nil, err
	}
	return m.apiGet(ctx, sess, path)
}

// StudentInfo returns the caller's account data.
func (m *Manager) StudentInfo(ctx context.Context) (interface{}, error) {
	return m.Get(ctx, studentDataPath)
}

// Grades returns the full grade listing.
func (m *Manager) Grades(ctx context.Context) (interface{}, error) {
	return m.Get(ctx, gradesPath)
}

// GradeStats returns the grade distribution for one course syllabus
// and exam period.
func (m *Manager) GradeStats(ctx context.Context, courseSyllabusID, examPeriodID string) (interface{}, error) {
	path := fmt.Sprintf("/feign/student/grades/stats/course_syllabus/%s/exam_period/%s",
		url.PathEscape(courseSyllabusID), url.PathEscape(examPeriodID))
	return m.Get(ctx, path)
}
