package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestAddMentionedTopicSetSemantics(t *testing.T) {
	var rf RiskFactors
	rf.AddMentionedTopic("drugs")
	rf.AddMentionedTopic("abuse")
	rf.AddMentionedTopic("drugs")
	rf.AddMentionedTopic("violence")

	want := []string{"abuse", "drugs", "violence"}
	if len(rf.MentionedTopics) != len(want) {
		t.Fatalf("expected %d topics, got %v", len(want), rf.MentionedTopics)
	}
	for i, topic := range want {
		if rf.MentionedTopics[i] != topic {
			t.Fatalf("expected sorted topics %v, got %v", want, rf.MentionedTopics)
		}
	}
}

func TestValidateAcceptsFreshState(t *testing.T) {
	if err := NewChatbotState().Validate(); err != nil {
		t.Fatalf("expected valid state, got %v", err)
	}
}

func TestValidateRejectsBadStates(t *testing.T) {
	cases := []struct {
		name  string
		state func() *ChatbotState
	}{
		{"unknown role", func() *ChatbotState {
			s := NewChatbotState()
			s.Conversation = append(s.Conversation, Message{Role: "ghost", Content: "x"})
			return s
		}},
		{"empty content", func() *ChatbotState {
			s := NewChatbotState()
			s.Conversation = append(s.Conversation, Message{Role: RoleUser})
			return s
		}},
		{"toxicity out of range", func() *ChatbotState {
			s := NewChatbotState()
			s.SafetyCheck = &SafetyCheck{ToxicityScore: 1.4, RiskLevel: RiskLow}
			return s
		}},
		{"unknown risk level", func() *ChatbotState {
			s := NewChatbotState()
			s.SafetyCheck = &SafetyCheck{ToxicityScore: 0.2, RiskLevel: "extreme"}
			return s
		}},
		{"confidence out of range", func() *ChatbotState {
			s := NewChatbotState()
			s.EmotionAnalysis = &EmotionAnalysis{PrimaryEmotion: "joy", Confidence: 1.2}
			return s
		}},
		{"unknown agent", func() *ChatbotState {
			s := NewChatbotState()
			s.CurrentAgent = "oracle"
			return s
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.state().Validate()
			var vErr *StateValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected StateValidationError, got %v", err)
			}
		})
	}
}

func TestChatbotStateJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	state := NewChatbotState()
	state.Conversation = append(state.Conversation, Message{
		Role:     RoleUser,
		Content:  "hello",
		Metadata: map[string]any{"timestamp": now.Format(time.RFC3339), "emotion": "joy"},
	})
	state.UserInfo = &UserInfo{
		UserID: "user_20250314150926",
		Preferences: Preferences{
			EmotionHistory: []EmotionRecord{{Emotion: "joy", Timestamp: now}},
		},
		RiskFactors: RiskFactors{
			LatestRiskLevel:  RiskLow,
			LatestAssessment: now,
			MentionedTopics:  []string{"alcohol"},
		},
	}
	state.SuggestedResources = []ResourceInfo{{Type: "article", Content: "a", Source: "s", URL: "u"}}

	raw, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded ChatbotState
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(decoded.Conversation) != 1 || decoded.Conversation[0].Metadata["emotion"] != "joy" {
		t.Fatalf("conversation did not survive round trip: %+v", decoded.Conversation)
	}
	if decoded.UserInfo == nil || decoded.UserInfo.UserID != "user_20250314150926" {
		t.Fatalf("user info did not survive round trip: %+v", decoded.UserInfo)
	}
	if !decoded.UserInfo.Preferences.EmotionHistory[0].Timestamp.Equal(now) {
		t.Fatal("emotion history timestamp mismatch")
	}
	if len(decoded.SuggestedResources) != 1 || decoded.SuggestedResources[0].URL != "u" {
		t.Fatalf("resources did not survive round trip: %+v", decoded.SuggestedResources)
	}
	if err := decoded.Validate(); err != nil {
		t.Fatalf("decoded state should validate, got %v", err)
	}
}
