package services

import (
  "strings"
  "unicode"
)

// Segment sizing: close a bubble once it holds at least segmentMinLen
// characters and the next sentence would push it past segmentMaxLen.
const (
  segmentMaxLen = 250
  segmentMinLen = 80
)

// SegmentRevealDelayMS is the pause between chat bubbles on the client.
// Only the last bubble's reveal triggers the progress callback, so the
// full reply is always visible before any completion transition.
const SegmentRevealDelayMS = 800

// MaxSegments caps how many bubbles one reply may produce.
const MaxSegments = 3

func isSentenceEnder(r rune) bool {
  switch r {
  case '.', '!', '?', '。', '！', '？', ':':
    return true
  }
  // Emoji followed by whitespace also ends a sentence.
  return r >= 0x1F300 && r <= 0x1F9FF
}

// splitSentences cuts text at sentence-ending punctuation (or emoji)
// followed by whitespace, keeping both the delimiter and its trailing
// whitespace on the preceding sentence so newlines inside a reply
// survive reassembly. The trailing remainder counts as a sentence.
func splitSentences(text string) []string {
  runes := []rune(text)
  var sentences []string
  start := 0
  for i := 0; i < len(runes); i++ {
    if isSentenceEnder(runes[i]) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
      j := i + 1
      for j < len(runes) && unicode.IsSpace(runes[j]) {
        j++
      }
      sentences = append(sentences, string(runes[start:j]))
      start = j
      i = j - 1
    }
  }
  if start < len(runes) {
    sentences = append(sentences, string(runes[start:]))
  }
  return sentences
}

// SplitSegments converts one assistant reply into 1-3 display segments
// along sentence boundaries. Sentences are greedily accumulated; if the
// greedy pass yields more than MaxSegments, the sentence list is
// re-bucketed into contiguous groups of ceil(n/3) sentences each.
func SplitSegments(text string) []string {
  trimmed := strings.TrimSpace(text)
  if trimmed == "" {
    return nil
  }

  sentences := splitSentences(trimmed)
  if len(sentences) == 0 {
    return []string{trimmed}
  }

  var segments []string
  current := ""
  currentLen := 0
  for _, sentence := range sentences {
    sentenceLen := len([]rune(strings.TrimSpace(sentence)))
    if currentLen+sentenceLen > segmentMaxLen && currentLen >= segmentMinLen {
      segments = append(segments, strings.TrimSpace(current))
      current = sentence
      currentLen = sentenceLen
    } else {
      current += sentence
      currentLen += sentenceLen
    }
  }
  if s := strings.TrimSpace(current); s != "" {
    segments = append(segments, s)
  }

  if len(segments) <= MaxSegments {
    return segments
  }

  chunk := (len(sentences) + MaxSegments - 1) / MaxSegments
  var rebucketed []string
  for i := 0; i < len(sentences); i += chunk {
    end := i + chunk
    if end > len(sentences) {
      end = len(sentences)
    }
    rebucketed = append(rebucketed, strings.TrimSpace(strings.Join(sentences[i:end], "")))
  }
  return rebucketed
}
