package logging

// Structured field keys shared by every log call.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldSource     = "source"

	FieldLanguage   = "language"
	FieldCategories = "categories"
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"

	FieldFilesProcessed  = "files_processed"
	FieldViolationsTotal = "violations_total"
	FieldDuration        = "duration"
	FieldPasses          = "passes"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldRule = "rule"
	FieldName = "name"
)
