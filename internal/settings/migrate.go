package settings

import (
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
)

// CurrentSchemaVersion is the schema version produced by the newest
// migration step. Documents stamped with this version are loaded as-is.
const CurrentSchemaVersion = 1

// migrationStep is one pure document transform. Steps never touch storage;
// the engine persists the final document and version marker after the full
// chain has run, so a failed persist leaves the stored document untouched.
type migrationStep struct {
	// version is the schema version the document holds after this step.
	version int

	// apply transforms a document from version-1 to version. It must not
	// mutate its input.
	apply func(models.Document) models.Document
}

// migrationChain lists every step in ascending version order. Appending a
// step and bumping CurrentSchemaVersion is the whole procedure for adding a
// schema change.
var migrationChain = []migrationStep{
	{version: 1, apply: stampSchemaVersion},
}

// Migrate brings a document from a stored schema version up to
// CurrentSchemaVersion by applying each pending step in order. It returns
// the migrated document and whether any step ran; when the document is
// already current it returns the input unchanged, making the call safe on
// every cold load.
func Migrate(doc models.Document, fromVersion int) (models.Document, bool) {
	if fromVersion >= CurrentSchemaVersion {
		return doc, false
	}

	migrated := doc
	for _, step := range migrationChain {
		if step.version <= fromVersion {
			continue
		}
		migrated = step.apply(migrated)
	}

	return migrated, true
}

// stampSchemaVersion tags the document with its schema version and leaves
// every other field alone. It exists so later structural transforms have a
// reliable version to key off.
func stampSchemaVersion(doc models.Document) models.Document {
	out := doc.Clone()
	if out == nil {
		out = models.NewDocument()
	}
	out[constants.KeySchemaVersion] = 1
	return out
}
