package service

import (
	"strings"

	"ai_tutor_backend/internal/model"
)

// topicRule holds the keyword set for one topic. Rules are evaluated in
// slice order and the first match wins, so a message mentioning both
// "python" and "html" classifies as Python Programming.
type topicRule struct {
	topic    model.Topic
	keywords []string
}

var topicRules = []topicRule{
	{model.TopicPython, []string{"python", "programming", "code", "function", "variable", "loop"}},
	{model.TopicWebDev, []string{"web", "html", "css", "javascript", "react", "frontend"}},
	{model.TopicDataScience, []string{"data", "science", "analytics", "statistics", "machine learning"}},
	{model.TopicMath, []string{"math", "mathematics", "algebra", "geometry", "calculus"}},
}

// ClassifyTopic maps a free-text message to a topic by case-insensitive
// substring matching. It always returns a topic; General is the floor.
func ClassifyTopic(message string) model.Topic {
	messageLower := strings.ToLower(message)

	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(messageLower, kw) {
				return rule.topic
			}
		}
	}

	return model.TopicGeneral
}

// SuggestedTopics returns exactly four related subtopic names for a topic.
func SuggestedTopics(topic model.Topic) []string {
	switch topic {
	case model.TopicPython:
		return []string{"Variables and Data Types", "Functions and Methods", "Loops and Conditionals", "Lists and Dictionaries"}
	case model.TopicWebDev:
		return []string{"HTML Structure", "CSS Styling", "JavaScript Basics", "Responsive Design"}
	case model.TopicDataScience:
		return []string{"Data Analysis", "Data Visualization", "Statistics Basics", "Python for Data Science"}
	case model.TopicMath:
		return []string{"Algebra Basics", "Geometry Fundamentals", "Statistics", "Problem Solving"}
	default:
		return []string{"Study Techniques", "Learning Strategies", "Problem Solving", "Critical Thinking"}
	}
}
