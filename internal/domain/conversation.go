package domain

import "time"

// ReplyTone: тон сгенерированного ответа покупателю.
type ReplyTone string

const (
	ToneWarm    ReplyTone = "warm"
	TonePrecise ReplyTone = "precise"
	ToneBrief   ReplyTone = "brief"
)

// ReplyTones: порядок вариантов ответа.
var ReplyTones = []ReplyTone{ToneWarm, TonePrecise, ToneBrief}

// CustomerReply: один вариант ответа покупателю.
type CustomerReply struct {
	Tone ReplyTone
	Text string
}

// Conversation хранит сообщение покупателя и сгенерированные варианты ответа
type Conversation struct {
	ID                 int64
	CustomerMessage    string
	GeneratedResponses []string
	CreatedAt          time.Time
}

func NewConversation(message string) *Conversation {
	return &Conversation{CustomerMessage: message}
}

// ReplyTexts возвращает тексты ответов в порядке ReplyTones.
func ReplyTexts(replies []CustomerReply) []string {
	out := make([]string, len(replies))
	for i, r := range replies {
		out[i] = r.Text
	}

	return out
}

// GeneratedListing: заголовок и описание объявления от AI.
type GeneratedListing struct {
	Title       string
	Description string
}
