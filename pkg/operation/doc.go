/*
Package operation runs cfn-hint over a batch of documents.

	+-------------+     +-------------+     +-------------+
	|   Source    | --> |  Document   | --> |   Output    |
	|   (Read)    |     |  (Process)  |     | print/diff/ |
	+-------------+     +-------------+     |    write    |
	                                        +------+------+
	                                               |
	                                        +------+------+
	                                        |   Report    |
	                                        |  (Outcome)  |
	                                        +-------------+

🎯 Purpose:
- Reads every document, applies its hints and emits the result
- Keeps each document isolated so one failure never stops the batch
- Records one status.Outcome per document

🔄 Flow:
1. The output directory is created up front in write mode
2. Documents run on an errgroup bounded by Options.Concurrency
3. Each worker reads, processes, logs events and emits output
4. Panics inside processing are recovered into an internal failure

⚡ Output modes:
- Diff takes precedence over write, write over print
- stdin is always printed, never written
- Unchanged files are skipped in every mode
*/
package operation
