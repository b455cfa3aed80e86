// Command vidsentiment analyzes the sentiment of an online video and its
// comments.
//
// `vidsentiment analyze <url>` runs a single analysis and prints the report;
// `vidsentiment serve` exposes the same pipeline over HTTP. Supporting
// commands check external tool availability (`deps`) and manage the TOML
// configuration file (`config init`, `config validate`).
package main
