// Plansum - Terraform plan summarizer for multi-account repositories
// Decode. Count. Report.
package main

func main() {
	Execute()
}
