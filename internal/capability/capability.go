// Package capability answers scope-qualified permission questions: can an
// actor perform a named action for a given locale and, where relevant, a
// given project? Team membership is looked up fresh on every call; the
// resolver itself holds no state beyond its table access.
package capability

import (
	"context"

	"github.com/localewatch/localewatch/internal/auth"
	"github.com/localewatch/localewatch/internal/constants"
	"github.com/localewatch/localewatch/internal/models"
	"github.com/localewatch/localewatch/internal/sanitize"
)

// TeamDirectory is the team-assignment lookup surface the resolver needs.
// The MySQL team repository satisfies it. The resolver only ever reads.
type TeamDirectory interface {
	// IsLocaleManager reports whether the actor manages the locale.
	IsLocaleManager(ctx context.Context, userID int64, locale string) (bool, error)

	// IsGeneralEditor reports whether the actor has general editing rights
	// for the locale.
	IsGeneralEditor(ctx context.Context, userID int64, locale string) (bool, error)

	// IsProjectEditor reports whether the actor has editing rights for the
	// given project key within the locale.
	IsProjectEditor(ctx context.Context, userID int64, locale, projectKey string) (bool, error)
}

// ScopedPermission is a permission request together with the context it is
// evaluated in. Each concrete variant carries exactly the scope its grant
// rule needs, so an under-specified request cannot be expressed.
type ScopedPermission interface {
	// Name returns the permission's wire name.
	Name() string

	// locale returns the locale the request is scoped to.
	locale() string
}

// ManageLocale asks for full management rights over a locale.
type ManageLocale struct {
	Locale string
}

// ManageProjectLocale asks for editing rights over one project's
// translations within a locale.
type ManageProjectLocale struct {
	Locale  string
	Project models.ProjectRef
}

// AssignUserLocale asks for the right to change the locale's team
// assignments.
type AssignUserLocale struct {
	Locale string
}

// ViewReportsLocale asks for read access to a project's progress reports
// within a locale.
type ViewReportsLocale struct {
	Locale  string
	Project models.ProjectRef
}

func (p ManageLocale) Name() string        { return constants.PermManageLocale }
func (p ManageProjectLocale) Name() string { return constants.PermManageProjectLocale }
func (p AssignUserLocale) Name() string    { return constants.PermAssignUserLocale }
func (p ViewReportsLocale) Name() string   { return constants.PermViewReportsLocale }

func (p ManageLocale) locale() string        { return p.Locale }
func (p ManageProjectLocale) locale() string { return p.Locale }
func (p AssignUserLocale) locale() string    { return p.Locale }
func (p ViewReportsLocale) locale() string   { return p.Locale }

// BaseCapabilities lists the site-wide permissions granted wholesale to any
// actor carrying the platform administrator flag.
var BaseCapabilities = []string{
	constants.CapViewDashboard,
	constants.CapManageSettings,
	constants.CapManageProjects,
	constants.CapManageTeams,
	constants.CapManageNotifications,
	constants.CapAssignProjects,
}

// Resolver evaluates scoped permissions against the team-assignment tables.
type Resolver struct {
	teams TeamDirectory
}

// NewResolver creates a resolver over a team directory.
func NewResolver(teams TeamDirectory) *Resolver {
	return &Resolver{teams: teams}
}

// Can reports whether the actor holds a scoped permission.
//
// Administrators are granted immediately; the flag is read straight off the
// actor record rather than through another permission query, so resolution
// can never recurse. For everyone else the locale (and project key, where
// the variant carries one) is sanitized and tested against the team tables
// per the variant's grant rule.
//
// Parameters:
//   - ctx: Context for the table lookups
//   - actor: The actor whose permission is being evaluated
//   - perm: The scoped permission variant to evaluate
//
// Returns:
//   - bool: Whether the permission is granted
//   - error: A database AppError if a table lookup fails
func (r *Resolver) Can(ctx context.Context, actor *auth.Actor, perm ScopedPermission) (bool, error) {
	if actor == nil {
		return false, nil
	}
	if actor.Administrator {
		return true, nil
	}

	locale := sanitize.Locale(perm.locale())
	if locale == "" {
		return false, nil
	}

	switch p := perm.(type) {
	case ManageLocale:
		return r.managesLocale(ctx, actor.ID, locale)

	case AssignUserLocale:
		return r.teams.IsLocaleManager(ctx, actor.ID, locale)

	case ManageProjectLocale:
		return r.editsProject(ctx, actor.ID, locale, p.Project)

	case ViewReportsLocale:
		return r.editsProject(ctx, actor.ID, locale, p.Project)

	default:
		return false, nil
	}
}

// ResolveName evaluates a permission by wire name, carrying the caller's
// already-made decision through for names the resolver does not recognize.
// The pass-through keeps the resolver composable with other permission
// layers: it only ever overrides decisions about its own permissions.
//
// Parameters:
//   - ctx: Context for the table lookups
//   - actor: The actor whose permission is being evaluated
//   - name: The permission's wire name
//   - requested: The caller's decision, returned unchanged for unknown names
//   - locale: The locale scope
//   - project: The project scope, ignored by locale-only permissions
func (r *Resolver) ResolveName(ctx context.Context, actor *auth.Actor, name string, requested bool, locale string, project models.ProjectRef) (bool, error) {
	switch name {
	case constants.PermManageLocale:
		return r.Can(ctx, actor, ManageLocale{Locale: locale})
	case constants.PermManageProjectLocale:
		return r.Can(ctx, actor, ManageProjectLocale{Locale: locale, Project: project})
	case constants.PermAssignUserLocale:
		return r.Can(ctx, actor, AssignUserLocale{Locale: locale})
	case constants.PermViewReportsLocale:
		return r.Can(ctx, actor, ViewReportsLocale{Locale: locale, Project: project})
	default:
		return requested, nil
	}
}

// managesLocale tests locale-manager or general-editor membership.
func (r *Resolver) managesLocale(ctx context.Context, userID int64, locale string) (bool, error) {
	manager, err := r.teams.IsLocaleManager(ctx, userID, locale)
	if err != nil {
		return false, err
	}
	if manager {
		return true, nil
	}
	return r.teams.IsGeneralEditor(ctx, userID, locale)
}

// editsProject tests the widest membership set: locale manager, general
// editor, or editor of the specific project. A project reference missing a
// type or slug degrades to an empty key, which never matches a stored
// mapping, so the project-editor branch is skipped for it.
func (r *Resolver) editsProject(ctx context.Context, userID int64, locale string, project models.ProjectRef) (bool, error) {
	granted, err := r.managesLocale(ctx, userID, locale)
	if err != nil || granted {
		return granted, err
	}

	key := models.ProjectRef{
		Type: sanitize.Slug(project.Type),
		Slug: sanitize.Slug(project.Slug),
	}.Key()
	if key == "" {
		return false, nil
	}

	return r.teams.IsProjectEditor(ctx, userID, locale, key)
}

// GrantBase applies the administrator broadening step to a checked
// permission set: when the actor holds the administrator flag, every base
// capability in the set is granted. Non-administrators get the set back
// unchanged.
func GrantBase(actor *auth.Actor, checked map[string]bool) map[string]bool {
	if actor == nil || !actor.Administrator {
		return checked
	}

	out := make(map[string]bool, len(checked))
	for name, granted := range checked {
		out[name] = granted
	}
	for _, name := range BaseCapabilities {
		if _, asked := out[name]; asked {
			out[name] = true
		}
	}
	return out
}
