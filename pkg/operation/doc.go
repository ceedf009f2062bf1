/*
Package operation implements the batch strip run: discover, transform, write, warn.

	+-------------+     +-------------+     +-------------+
	|  discover   | --> |  Stripper   | --> |   status    |
	| (candidates)|     | (pipeline)  |     |  (report)   |
	+-------------+     +------+------+     +-------------+
	                           |
	                    +------+------+
	                    |  FileManager|
	                    | (read/write)|
	                    +-------------+

🎯 Purpose:
- Runs every configured rule over each candidate file, in order
- Writes a file back only when its bytes changed
- Records one report entry per file, including failures

🔄 Flow:
1. Discovery lists candidate files under the root (failure aborts the run)
2. Each file is read, transformed and compared, one at a time
3. Changed files are written atomically unless the run is a dry run
4. Advisory warnings are checked against the final content
5. The per-file line is printed and the entry is recorded

⚡ Error Handling:
- Discovery and config errors are returned from New or Run
- Read, transform and write errors are stored on the file's entry
- Context cancellation stops the run between files

🔍 Example:

	stripper, err := operation.New(operation.Options{
		Config: cfg,
		Fs:     afero.NewOsFs(),
		Logger: log.New(os.Stdout, zerolog.InfoLevel),
	})
	if err != nil {
		return err
	}
	report, err := stripper.Run(ctx)
*/
package operation
