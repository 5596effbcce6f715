// Package services implements the driving port interfaces.
// Services contain the scan logic and orchestrate calls to driven ports
// (the code-hosting platform) and the classifiers.
package services
