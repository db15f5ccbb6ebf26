package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Manifest / configuration
	CfgInfo             Code = 1000
	CfgEmptyAlgorithms  Code = 1001
	CfgUnknownAlgorithm Code = 1002
	CfgBadAlgorithmType Code = 1003

	// Bundle graph
	GraphInfo           Code = 2000
	GraphDuplicateChunk Code = 2001
	GraphUnknownChild   Code = 2002
	GraphSelfReference  Code = 2003
	GraphMissingAsset   Code = 2004

	// Integrity resolution
	ResolveInfo               Code = 3000
	ResolvePlaceholderMissing Code = 3001
	ResolveChunkWithoutFiles  Code = 3002

	// Markup injection
	MarkupInfo          Code = 4000
	MarkupUnresolvedRef Code = 4001

	// Record / verification
	RecordInfo           Code = 5000
	RecordDigestDrift    Code = 5001
	RecordUnknownAsset   Code = 5002
	RecordSchemaMismatch Code = 5003
)

func (c Code) String() string {
	return fmt.Sprintf("SRI%04d", uint16(c))
}
