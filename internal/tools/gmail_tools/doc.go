// Package gmail_tools provides MCP operations for Gmail.
//
// Message operations:
//   - gmail_list_messages: list messages matching a search query or labels
//   - gmail_get_message: read one message with its decoded body
//   - gmail_send_message: send a plain-text email
//   - gmail_modify_message: add or remove labels on a message
//
// Label operations:
//   - gmail_list_labels: list the labels of the mailbox
//
// All operations act on the authenticated user's mailbox through the Gmail
// client held by the server context.
package gmail_tools
