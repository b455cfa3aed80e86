// Package topics maps comment sets to per-topic sentiment summaries.
package topics
