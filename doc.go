// Package mdflow guides an external actor through workflows written as
// markdown documents.
//
// Artifacts live in worlds and are addressed as world:path:name. A workflow
// artifact declares its operations as sections; directives such as
// {{ goto "review" }} in section text declare the allowed transitions. The
// runtime executes operations one step at a time and persists the session
// snapshot after every step, so a session can be resumed from any process
// that reaches the same store.
//
//	srv, _ := mdflow.New(mdflow.WithConfig(cfg))
//	rt := srv.Runtime()
//	result, _ := rt.StartWorkflow(ctx, "s1", "project:flows:review", nil)
//	for _, request := range result.State.ActionRequests() {
//		// hand request.Request to the actor, then
//		result, _ = rt.CompleteActionRequest(ctx, "s1", request.ID, "approve")
//	}
package mdflow
