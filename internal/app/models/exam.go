package models

// Exam links a user to a course with the score obtained and the date the
// exam was taken. The pair (user, course code) identifies an exam.
type Exam struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"-" db:"user_id"`
	Code   string `json:"code" db:"course_code"`
	// Date is kept in wire format (YYYY-MM-DD); parsing happens at the
	// validation boundary.
	Date  string `json:"date" db:"date"`
	Score int    `json:"score" db:"score"`
}
