// Package classifier decides whether repository files are translation
// artifacts.
//
// Classification runs in two stages. PathClassifier is a permissive
// pre-filter over the file path (directory keywords, Android values-xx
// folders, catalog extensions, filename fragments). ContentClassifier then
// inspects the fetched content of each candidate and only confirms files
// whose structure looks like a translation catalog. A file is reported only
// when both stages accept it.
//
// Both classifiers are pure: rule sets are immutable values supplied at
// construction and classifiers may be shared between goroutines.
package classifier
