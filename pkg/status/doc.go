/*
Package status tracks what happened to every document in a run and turns it
into an exit code.

	+-----------+     +-----------+     +-----------+
	| Outcome   | --> |  Report   | --> | Exit code |
	| (per doc) |     | (per run) |     |  (worst)  |
	+-----------+     +-----------+     +-----------+
	                        |
	                  +-----+------+
	                  | UserLogger |
	                  |  (summary) |
	                  +------------+

🎯 Purpose:
- Classifies each document (unchanged, modified, written, failed)
- Maps failures to process exit codes
- Aggregates a run so the worst outcome wins
- Prints a short, human friendly summary

🔄 Flow:
1. The operation runner records one Outcome per document
2. Report.Code picks the highest exit code across outcomes
3. UserLogger prints a line per failure plus a final tally

🔍 Example:

	report := status.NewReport()
	report.Record(status.Outcome{Document: "app.yaml", Status: status.StatusWritten, Applied: 2})
	report.Record(status.Outcome{Document: "db.yaml", Status: status.StatusReadFailed, Err: err})

	os.Exit(int(report.Code())) // 3, read failure
*/
package status
