package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation groups a thread of user/assistant messages under one id.
type Conversation struct {
	BaseModel
	UserID   uint      `gorm:"index;not null" json:"userId"`
	Title    string    `gorm:"size:100;not null" json:"title"`
	Topic    string    `gorm:"size:50" json:"topic"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type Message struct {
	BaseModel
	ConversationID uint   `gorm:"index;not null" json:"conversationId"`
	Role           string `gorm:"type:enum('user','assistant');not null" json:"role"`
	Content        string `gorm:"type:text;not null" json:"content"`
}

func (Message) TableName() string {
	return "messages"
}
