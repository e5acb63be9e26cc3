package model

// Topic is the fixed set of subject categories used to route tutoring
// content and progress tracking. It is computed per message, never stored
// as its own entity; progress records and quizzes carry the string value.
type Topic string

const (
	TopicPython      Topic = "Python Programming"
	TopicWebDev      Topic = "Web Development"
	TopicDataScience Topic = "Data Science"
	TopicMath        Topic = "Mathematics"
	TopicGeneral     Topic = "General"
)

func (t Topic) String() string {
	return string(t)
}
