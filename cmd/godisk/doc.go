// Command godisk is a terminal client for the disk backend.
//
// Usage:
//
//	# Run a script, showing live progress, then print the explorer
//	godisk run --backend http://localhost:3001 setup.mia
//
//	# Rebuild the explorer from captured backend output
//	cat output.txt | godisk parse -o yaml -
//
// Output formats are text (tree view), json and yaml.
package main
