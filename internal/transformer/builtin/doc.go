// Package builtin contains the cleaning passes applied to the patient table,
// in the order the cleaner runs them: Impute, DeDup, Outliers, Consistency,
// Resample and Coerce. Each pass mutates the table in place and reports what
// it changed through transformer.Stats.
package builtin
