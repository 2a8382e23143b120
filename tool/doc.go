/*
Package tool defines the descriptors for functions an agent platform can
invoke. A tool is declared to the platform by name, description and a JSON
schema for its parameters; the platform owns the decision to invoke it.

Design decisions:

  - Explicit descriptors: a Definition carries name, parameter names and the
    function handle, so what gets declared to the platform is statically
    visible rather than discovered by runtime introspection of a callable set.
  - Schema generation: parameter schemas are reflected from the function
    signature with invopop/jsonschema, keeping the declaration and the
    implementation in one place.
  - Functional options: Name, Description and Parameters configure a
    definition the same way agents and dispatchers are configured.

Basic usage:

	func sendEmail(to, subject, body string) string { ... }

	def := tool.Must(sendEmail,
		tool.Name("send_email"),
		tool.Description("Sends an email to the recipient."),
		tool.Parameters("to", "subject", "body"),
	)

	name, schema := def.ToNameAndSchema()

Tools should be stateless where possible; the platform may invoke them zero
or more times per conversation turn, potentially concurrently.
*/
package tool
