// Package primitive resolves kinds by dotted identifier, e.g.
// "mdflow.lib.workflow" names the "workflow" member of module "mdflow.lib".
// Modules are registered explicitly at start up.
package primitive
