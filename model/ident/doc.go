// Package ident defines the addressing scheme used to name artifacts and their
// sections across storage namespaces (worlds).
//
// Every identifier is a sequence of bare identifier segments joined by ':'.
//
//	world                    WorldID
//	workflows:release        ArtifactID
//	project:workflows:release            FullArtifactID
//	project:workflows:release:start      FullArtifactSectionID
//
// Patterns additionally accept '*' (exactly one segment) and '**' (zero or more
// segments).
package ident
