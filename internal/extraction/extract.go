package extraction

import (
  "bytes"
  "encoding/csv"
  "fmt"
  "io"
  "path/filepath"
  "strings"

  pdf "github.com/ledongthuc/pdf"
)

// ExtractText determines the true file type from bytes (sniffing), then
// extracts text accordingly.
// Supported: PDF, CSV, TXT. Spreadsheet containers and other binary formats
// fail here so the caller can decide whether an OCR fallback applies.
func ExtractText(originalName string, mimeType string, data []byte) (string, error) {
  ext := strings.ToLower(filepath.Ext(originalName))
  mt := strings.ToLower(strings.TrimSpace(mimeType))

  if len(data) == 0 {
    return "", fmt.Errorf("empty file: name=%s mime=%s", originalName, mimeType)
  }

  // 1) Sniff by magic bytes first (most reliable)
  if isPDF(data) {
    return extractPDF(data)
  }
  if isZip(data) {
    // xlsx and friends. There is no local text layer for these.
    return "", fmt.Errorf("spreadsheet container has no text layer: name=%s mime=%s", originalName, mimeType)
  }

  // 2) CSV by extension/mime before the generic text branch, so rows keep
  // their structure.
  if ext == ".csv" || mt == "text/csv" {
    return extractCSV(data)
  }

  // 3) Sniff as plaintext
  if isProbablyText(data) || mt == "text/plain" || ext == ".txt" {
    return collapseWhitespace(string(data)), nil
  }

  // 4) If mime/ext claim pdf but the header is missing, say so.
  if mt == "application/pdf" || ext == ".pdf" {
    head := firstBytesHex(data, 16)
    return "", fmt.Errorf("file claims pdf but missing %%PDF header. name=%s mime=%s head=%s", originalName, mimeType, head)
  }

  // 5) Unknown binary
  return "", fmt.Errorf("unsupported file type: name=%s ext=%s mime=%s head=%s", originalName, ext, mimeType, firstBytesHex(data, 16))
}

// ------------------------
// Sniff helpers
// ------------------------

func isPDF(b []byte) bool {
  // PDF starts with "%PDF-"
  return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func isZip(b []byte) bool {
  // ZIP local file header: PK\x03\x04
  return len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4
}

func isProbablyText(b []byte) bool {
  // Heuristic: if most bytes are printable / whitespace and no NULs.
  sample := b[:min(len(b), 4096)]
  nul := 0
  good := 0
  for _, c := range sample {
    if c == 0x00 {
      nul++
      continue
    }
    if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
      good++
    }
  }
  if nul > 0 {
    return false
  }
  // allow some binary noise
  return float64(good)/float64(len(sample)) > 0.9
}

func firstBytesHex(b []byte, n int) string {
  n = min(len(b), n)
  const hexdigits = "0123456789abcdef"
  out := make([]byte, 0, n*2)
  for i := 0; i < n; i++ {
    out = append(out, hexdigits[b[i]>>4], hexdigits[b[i]&0x0f])
  }
  return string(out)
}

// ------------------------
// Extractors
// ------------------------

func extractPDF(data []byte) (string, error) {
  r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
  if err != nil {
    return "", fmt.Errorf("pdf reader: %w", err)
  }
  plain, err := r.GetPlainText()
  if err != nil {
    return "", fmt.Errorf("pdf plaintext: %w", err)
  }
  b, err := io.ReadAll(plain)
  if err != nil {
    return "", fmt.Errorf("pdf read: %w", err)
  }
  return collapseWhitespace(string(b)), nil
}

func extractCSV(data []byte) (string, error) {
  reader := csv.NewReader(bytes.NewReader(data))
  reader.FieldsPerRecord = -1
  reader.LazyQuotes = true

  var out strings.Builder
  for {
    record, err := reader.Read()
    if err == io.EOF {
      break
    }
    if err != nil {
      return "", fmt.Errorf("csv read: %w", err)
    }
    out.WriteString(strings.Join(record, " "))
    out.WriteString("\n")
  }
  return collapseWhitespace(out.String()), nil
}

func collapseWhitespace(s string) string {
  s = strings.ReplaceAll(s, " ", " ")
  fields := strings.Fields(s)
  return strings.Join(fields, " ")
}
