package scanning

// Scanner extracts raw text from a receipt image. Implementations are black
// boxes to the analysis core, which consumes only the returned string.
type Scanner interface {
	// ExtractText returns the receipt's text, newline separated, one line
	// per printed line.
	ExtractText(imageData []byte, contentType string) (string, error)
	// Close closes the scanner and releases resources.
	Close() error
}

// receiptTextPrompt is the shared prompt used by all vision providers for
// transcribing receipts.
const receiptTextPrompt = `You are reading a photographed retail receipt. Transcribe every line of text you can read, exactly as printed, from top to bottom.

Rules:
- Output plain text only, one receipt line per output line
- Keep each price on the same line as its item
- Do not summarize, translate, or reorder anything
- Do not add commentary, labels, or markdown code blocks
- If a line is completely unreadable, skip it`
