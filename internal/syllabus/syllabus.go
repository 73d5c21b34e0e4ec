// Package syllabus holds the static class -> subjects -> chapters reference
// data. Chapter ids are only unique within a subject; (subjectID, chapterID)
// is the real key everywhere else in the system.
package syllabus

type Chapter struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PDFURL      string `json:"pdfUrl,omitempty"`
	Description string `json:"description,omitempty"`
}

type Subject struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon,omitempty"`
	Color    string    `json:"color,omitempty"`
	Chapters []Chapter `json:"chapters"`
}

// Classes lists the grade levels a user can sign up with, in order.
var Classes = []string{"Class 6", "Class 7", "Class 8", "Class 9", "Class 10"}

func ValidClass(class string) bool {
	for _, c := range Classes {
		if c == class {
			return true
		}
	}
	return false
}

// SubjectsForClass returns the subjects for a class, or nil for an unknown
// class.
func SubjectsForClass(class string) []Subject {
	return classSyllabus[class]
}

// SubjectForClass looks up one subject of a class by its numeric id.
func SubjectForClass(class string, subjectID int) (*Subject, bool) {
	for i := range classSyllabus[class] {
		if classSyllabus[class][i].ID == subjectID {
			return &classSyllabus[class][i], true
		}
	}
	return nil, false
}
