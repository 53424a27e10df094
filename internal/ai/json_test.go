package ai

import "testing"

func TestCleanJSONReply_Plain(t *testing.T) {
	in := `{"score": 90}`
	if got := CleanJSONReply(in); got != in {
		t.Fatalf("expected unchanged, got %s", got)
	}
}

func TestCleanJSONReply_MarkdownFence(t *testing.T) {
	in := "```json\n{\"score\": 90}\n```"
	if got := CleanJSONReply(in); got != `{"score": 90}` {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestCleanJSONReply_SurroundingProse(t *testing.T) {
	in := `Here is the result: {"score": 90, "note": "has {braces} in string"} hope that helps`
	if got := CleanJSONReply(in); got != `{"score": 90, "note": "has {braces} in string"}` {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestCleanJSONReply_NestedObjects(t *testing.T) {
	in := `{"outer": {"inner": 1}} trailing`
	if got := CleanJSONReply(in); got != `{"outer": {"inner": 1}}` {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestCleanJSONReply_EscapedQuotes(t *testing.T) {
	in := `{"msg": "say \"hi\" {ok}"}`
	if got := CleanJSONReply(in); got != in {
		t.Fatalf("unexpected: %s", got)
	}
}
