package service

import (
	"context"
	"fmt"
	"strings"

	"ai_tutor_backend/internal/model"
	"ai_tutor_backend/pkg/logger"
	"ai_tutor_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// TutorReply is the tutor's answer to a single chat message.
type TutorReply struct {
	Content         string      `json:"content"`
	Topic           model.Topic `json:"topic"`
	SuggestedTopics []string    `json:"suggestedTopics"`
}

// ConversationContext tunes the prompt sent to the external generator.
// It does not affect canned-response selection.
type ConversationContext struct {
	PreviousMessages []string
	LearningLevel    string // beginner, intermediate, advanced
	PreferredStyle   string // explanatory, examples, practice
}

// TextGenerator is the external generation collaborator. Generate returns
// an error when the backend is unavailable; callers fall back to canned
// content and must not propagate the failure.
type TextGenerator interface {
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerateReply produces the tutor's reply for a classified message. It
// never fails: if the external generator is missing, errors out, or
// returns nothing, the reply degrades to the built-in response tables.
func GenerateReply(ctx context.Context, message string, topic model.Topic, gen TextGenerator, convCtx *ConversationContext) TutorReply {
	if gen != nil && gen.Available() {
		prompt := BuildTutorPrompt(message, convCtx)
		text, err := gen.Generate(ctx, prompt)
		if err != nil {
			logger.Log.Warn("external generation failed, using built-in response",
				zap.String("topic", topic.String()), zap.Error(err))
		} else if strings.TrimSpace(text) != "" {
			return TutorReply{
				Content:         FormatExternalReply(text),
				Topic:           topic,
				SuggestedTopics: SuggestedTopics(topic),
			}
		}
	}

	monitoring.TutorFallbackCounter.Inc()

	return TutorReply{
		Content:         cannedReply(topic, message),
		Topic:           topic,
		SuggestedTopics: SuggestedTopics(topic),
	}
}

// BuildTutorPrompt frames the student's question for the external model.
// Level defaults to beginner, style to explanatory.
func BuildTutorPrompt(message string, convCtx *ConversationContext) string {
	level := "beginner"
	style := "explanatory"
	if convCtx != nil {
		if convCtx.LearningLevel != "" {
			level = convCtx.LearningLevel
		}
		if convCtx.PreferredStyle != "" {
			style = convCtx.PreferredStyle
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert, patient tutor. A %s student asks: %q\n\n", level, message)

	switch style {
	case "examples":
		b.WriteString("Provide a clear explanation with practical examples. ")
	case "practice":
		b.WriteString("Explain the concept and suggest practice exercises. ")
	default:
		b.WriteString("Provide a clear, step-by-step explanation. ")
	}

	b.WriteString("Keep your response under 150 words and focus on understanding.")

	return b.String()
}

var roleLabelPrefixes = []string{"assistant:", "ai:", "tutor:"}

// FormatExternalReply cleans up raw model output: strips a leading role
// label and, when the text carries no instructional vocabulary, prepends
// a framing sentence so replies keep a tutoring tone.
func FormatExternalReply(raw string) string {
	formatted := strings.TrimSpace(raw)

	lower := strings.ToLower(formatted)
	for _, prefix := range roleLabelPrefixes {
		if strings.HasPrefix(lower, prefix) {
			formatted = strings.TrimSpace(formatted[len(prefix):])
			break
		}
	}

	lower = strings.ToLower(formatted)
	if !strings.Contains(lower, "learn") &&
		!strings.Contains(lower, "understand") &&
		!strings.Contains(lower, "concept") &&
		!strings.Contains(lower, "example") {
		formatted = "Let me help you understand this concept. " + formatted
	}

	return formatted
}

// cannedReply dispatches to the per-topic handler. Each handler does its
// own finer-grained keyword matching and has its own fallback text.
func cannedReply(topic model.Topic, message string) string {
	switch topic {
	case model.TopicPython:
		return pythonReply(message)
	case model.TopicWebDev:
		return webDevReply(message)
	case model.TopicDataScience:
		return dataScienceReply(message)
	case model.TopicMath:
		return mathReply(message)
	default:
		return generalReply(message)
	}
}

func pythonReply(message string) string {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "variable") {
		return "Variables in Python are like labeled boxes that store data. For example: `name = 'Alice'` stores the text 'Alice' in a variable called 'name'. You can then use `print(name)` to display it. Variables can hold different types of data like numbers, text, or lists. What specific aspect of variables would you like to explore?"
	}
	if strings.Contains(lower, "function") {
		return "Functions are reusable blocks of code that perform specific tasks. Think of them like recipes - you define the steps once, then use them whenever needed. For example: `def greet(name): return f'Hello, {name}!'` creates a function that greets someone. You call it with `greet('Alice')`. Would you like to learn about parameters or return values?"
	}
	if strings.Contains(lower, "loop") {
		return "Loops let you repeat code multiple times. A `for` loop is like saying 'do this for each item': `for i in range(5): print(i)` prints numbers 0-4. A `while` loop continues until a condition is false: `while x < 10: x += 1`. Which type of loop would you like to practice with?"
	}
	return "Python is a beginner-friendly programming language. It uses simple, readable syntax that's close to English. You can use it for web development, data analysis, automation, and more. What specific Python concept would you like to learn about - variables, functions, loops, or data structures?"
}

func webDevReply(message string) string {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "html") {
		return "HTML is the structure of web pages, like the skeleton of a building. Tags like `<h1>Title</h1>` create headings, `<p>text</p>` creates paragraphs, and `<div>` groups content. Think of it as marking up your content to tell the browser what each piece is. Would you like to learn about specific HTML elements or how to create your first webpage?"
	}
	if strings.Contains(lower, "css") {
		return "CSS styles your HTML, like decorating a room. You can change colors, fonts, layouts, and more. For example: `h1 { color: blue; font-size: 24px; }` makes all headings blue and large. CSS selectors target elements, and properties define how they look. Would you like to learn about selectors, the box model, or layouts?"
	}
	if strings.Contains(lower, "javascript") {
		return "JavaScript adds interactivity to websites. It can respond to clicks, validate forms, and change content dynamically. For example: `document.getElementById('myButton').onclick = function() { alert('Hello!'); }` makes a button show a message when clicked. Would you like to learn about variables, functions, or DOM manipulation?"
	}
	return "Web development involves creating websites and web applications. You'll need HTML for structure, CSS for styling, and JavaScript for interactivity. Modern development also uses frameworks like React. What aspect interests you most - the basics of HTML/CSS, JavaScript programming, or modern frameworks?"
}

func dataScienceReply(message string) string {
	if strings.Contains(strings.ToLower(message), "data") {
		return "Data science is about extracting insights from data. You collect, clean, analyze, and visualize data to find patterns and make predictions. Python libraries like pandas (for data manipulation) and matplotlib (for visualization) are essential tools. What type of data analysis interests you most?"
	}
	return "Data science combines statistics, programming, and domain knowledge to understand data. You'll work with datasets, create visualizations, and build predictive models. Python and R are popular languages for this field. Would you like to start with data basics, statistics, or programming tools?"
}

func mathReply(message string) string {
	if strings.Contains(strings.ToLower(message), "algebra") {
		return "Algebra is about finding unknown values using equations. Variables (like x) represent unknown numbers, and you solve for them using mathematical operations. For example: if 2x + 3 = 7, then 2x = 4, so x = 2. It's like solving puzzles with numbers. What algebra concept would you like to explore?"
	}
	return "Mathematics is the foundation of logical thinking and problem-solving. Different areas like algebra, geometry, and statistics each have unique applications. Algebra works with variables and equations, geometry deals with shapes and space, and statistics analyzes data. Which area interests you most?"
}

func generalReply(message string) string {
	return fmt.Sprintf(`I'd be happy to help you learn about %q. To provide the best explanation, could you tell me:

1. What's your current knowledge level with this topic?
2. Are you looking for a general overview or specific details?
3. Do you prefer explanations with examples or step-by-step instructions?

This will help me tailor my response to your learning style!`, message)
}
