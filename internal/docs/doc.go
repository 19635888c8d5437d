// Package docs provides functionality for creating and mutating Google Docs.
//
// The write path turns parsed Markdown blocks into Docs API batch
// updates in three steps:
//
//	Flatten    resolves blocks into one rendered string plus formatting
//	           and structural ranges, measured in UTF-16 code units.
//	Plan*      turns a Flattened into an ordered list of Operations
//	           whose offsets stay valid as the batch applies: a single
//	           insert carries all text, styles follow in ascending
//	           order, and list creation runs last in descending order
//	           because it consumes indentation tabs.
//	Dispatcher validates the plan, translates it into API requests and
//	           sends it in batches, reporting how many operations were
//	           applied when a batch fails.
//
// The read path converts documents back to Markdown or plain text,
// including documents that use tabs (introduced Oct 2024).
//
// Example usage:
//
//	client, err := docs.NewClient(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := client.CreateDocumentFromMarkdown(ctx, "Notes", "# Hello\n\nSome **bold** text", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
package docs
