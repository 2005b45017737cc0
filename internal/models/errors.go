// ABOUTME: Error taxonomy for the decision core
// ABOUTME: Only classification and tool-invocation failures are fatal for a turn
package models

import "fmt"

// ClassificationError means the completion collaborator was unusable during
// intent classification. There is no fallback intent for this case; the turn
// fails and the caller decides what to show the user.
type ClassificationError struct {
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("intent classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// ToolInvocationError means the maintenance agent's completion collaborator
// does not support tool calling or misused the protocol. Fatal for the turn,
// never retried.
type ToolInvocationError struct {
	Err error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("tool invocation failed: %v", e.Err)
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// RetrievalError is reported by the knowledge-base retriever. The specs agent
// absorbs it by substituting a fixed fallback context, so it never fails a turn.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("knowledge base retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// WebhookError is reported by the escalation webhook client. The handoff
// evaluator absorbs it by synthesizing a default queued response.
type WebhookError struct {
	Err error
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("escalation webhook failed: %v", e.Err)
}

func (e *WebhookError) Unwrap() error { return e.Err }
