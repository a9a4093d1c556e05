// Package docs provides a client for the Google Docs v1 API.
//
// Documents are returned with their body flattened to plain text:
// paragraphs keep their own line breaks and table cells are separated by
// tabs, one table row per line.
//
// Example usage:
//
//	client, err := docs.NewClient(ctx, opts...)
//	if err != nil {
//	    return err
//	}
//
//	doc, err := client.GetDocument(ctx, "1ABC123xyz")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.Text)
package docs
