package models

import "testing"

func TestSubmitRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitRequest
		wantErr bool
	}{
		{"valid", SubmitRequest{ProblemID: 1, Language: "python", SourceCode: "print(1)"}, false},
		{"missing problem", SubmitRequest{Language: "python", SourceCode: "x"}, true},
		{"negative problem", SubmitRequest{ProblemID: -2, Language: "python", SourceCode: "x"}, true},
		{"blank language", SubmitRequest{ProblemID: 1, Language: "   ", SourceCode: "x"}, true},
		{"blank code", SubmitRequest{ProblemID: 1, Language: "go", SourceCode: "  \n "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.ValidateRequest()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
	}{
		{"valid", RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}, false},
		{"short username", RegisterRequest{Username: "al", Email: "alice@example.com", Password: "secret123"}, true},
		{"bad email", RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret123"}, true},
		{"short password", RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "short"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateProblemRequestValidate(t *testing.T) {
	valid := CreateProblemRequest{Title: "Two Sum", Description: "desc", Difficulty: DifficultyEasy}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	bad := CreateProblemRequest{Title: "Two Sum", Description: "desc", Difficulty: "Impossible"}
	if err := bad.Validate(); err == nil {
		t.Error("unknown difficulty accepted")
	}
}
