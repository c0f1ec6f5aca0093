package treesitter

// This file holds the per-language tables: ids, extensions, entity node
// kinds and the two structural queries. Grammars are attached in
// languages_builtin.go, or resolved at runtime in lean builds.
//
// To add a language:
// 1. Add its table below and append it to builtinLanguages.
// 2. Add the grammar import to languages_builtin.go.
// 3. Add a fixture test to walker_test.go.

const bracePlaceholder = "{ ... }"

// builtinLanguages returns a fresh copy of every supported language with
// compiled-in grammars attached where available.
func builtinLanguages() []Language {
	langs := []*ruleLanguage{
		goLanguage(),
		pythonLanguage(),
		javascriptLanguage(),
		typescriptLanguage("typescript", []string{"ts"}, []string{".ts", ".mts", ".cts"}),
		typescriptLanguage("tsx", nil, []string{".tsx"}),
		rustLanguage(),
		javaLanguage(),
	}
	out := make([]Language, len(langs))
	for i, l := range langs {
		l.grammar = builtinGrammars[l.name]
		out[i] = l
	}
	return out
}

func set(kinds ...string) map[string]bool {
	m := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}

// ---------- Go ----------

func goLanguage() *ruleLanguage {
	return &ruleLanguage{
		name:       "go",
		ids:        []string{"golang"},
		extensions: []string{".go"},
		entities: map[string]entityRule{
			"function_declaration": {kind: "function", role: roleLeaf},
			"method_declaration":   {kind: "method", role: roleLeaf},
			"type_declaration":     {kind: "type", role: roleWhole},
		},
		keep:           set("package_clause", "import_declaration", "const_declaration", "var_declaration"),
		placeholder:    bracePlaceholder,
		hoverableQuery: `[(identifier) (field_identifier) (type_identifier) (package_identifier)] @hoverable`,
		scopeQuery: `
(source_file) @local.scope
(function_declaration) @local.scope
(method_declaration) @local.scope
(func_literal) @local.scope
(block) @local.scope

(function_declaration name: (identifier) @local.definition.function)
(method_declaration name: (field_identifier) @local.definition.method)
(type_spec name: (type_identifier) @local.definition.type)
(parameter_declaration name: (identifier) @local.definition.variable)
(short_var_declaration left: (expression_list (identifier) @local.definition.variable))
(range_clause left: (expression_list (identifier) @local.definition.variable))
(var_spec name: (identifier) @local.definition.variable)
(const_spec name: (identifier) @local.definition.constant)

(identifier) @local.reference
(type_identifier) @local.reference
(field_identifier) @local.reference
`,
	}
}

// ---------- Python ----------

func pythonLanguage() *ruleLanguage {
	return &ruleLanguage{
		name:       "python",
		ids:        []string{"py"},
		extensions: []string{".py", ".pyi", ".pyw"},
		entities: map[string]entityRule{
			"function_definition": {kind: "function", role: roleLeaf},
			"class_definition":    {kind: "class", role: roleContainer},
		},
		wrappers:       map[string]string{"decorated_definition": "definition"},
		keep:           set("import_statement", "import_from_statement", "future_import_statement"),
		placeholder:    "...",
		hoverableQuery: `(identifier) @hoverable`,
		scopeQuery: `
(module) @local.scope
(function_definition) @local.scope
(class_definition) @local.scope
(lambda) @local.scope

(function_definition name: (identifier) @local.definition.function)
(class_definition name: (identifier) @local.definition.class)
(parameters (identifier) @local.definition.variable)
(default_parameter name: (identifier) @local.definition.variable)
(typed_parameter (identifier) @local.definition.variable)
(typed_default_parameter name: (identifier) @local.definition.variable)
(assignment left: (identifier) @local.definition.variable)
(for_statement left: (identifier) @local.definition.variable)
(aliased_import alias: (identifier) @local.definition.import)

(identifier) @local.reference
`,
	}
}

// ---------- JavaScript / TypeScript ----------

func javascriptLanguage() *ruleLanguage {
	return &ruleLanguage{
		name:       "javascript",
		ids:        []string{"js", "jsx"},
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		entities: map[string]entityRule{
			"function_declaration":           {kind: "function", role: roleLeaf},
			"generator_function_declaration": {kind: "function", role: roleLeaf},
			"method_definition":              {kind: "method", role: roleLeaf},
			"class_declaration":              {kind: "class", role: roleContainer},
		},
		wrappers:       map[string]string{"export_statement": "declaration"},
		keep:           set("import_statement", "lexical_declaration", "variable_declaration", "field_definition"),
		placeholder:    bracePlaceholder,
		hoverableQuery: `[(identifier) (property_identifier) (shorthand_property_identifier)] @hoverable`,
		scopeQuery: `
(program) @local.scope
(function_declaration) @local.scope
(generator_function_declaration) @local.scope
(function_expression) @local.scope
(arrow_function) @local.scope
(method_definition) @local.scope
(class_declaration) @local.scope
(statement_block) @local.scope

(function_declaration name: (identifier) @local.definition.function)
(generator_function_declaration name: (identifier) @local.definition.function)
(class_declaration name: (identifier) @local.definition.class)
(method_definition name: (property_identifier) @local.definition.method)
(variable_declarator name: (identifier) @local.definition.variable)
(formal_parameters (identifier) @local.definition.variable)
(arrow_function parameter: (identifier) @local.definition.variable)
(import_specifier name: (identifier) @local.definition.import)
(import_clause (identifier) @local.definition.import)

(identifier) @local.reference
`,
	}
}

func typescriptLanguage(name string, ids, exts []string) *ruleLanguage {
	return &ruleLanguage{
		name:       name,
		ids:        ids,
		extensions: exts,
		entities: map[string]entityRule{
			"function_declaration":           {kind: "function", role: roleLeaf},
			"generator_function_declaration": {kind: "function", role: roleLeaf},
			"method_definition":              {kind: "method", role: roleLeaf},
			"class_declaration":              {kind: "class", role: roleContainer},
			"abstract_class_declaration":     {kind: "class", role: roleContainer},
			"interface_declaration":          {kind: "interface", role: roleWhole},
			"enum_declaration":               {kind: "enum", role: roleWhole},
		},
		wrappers: map[string]string{"export_statement": "declaration"},
		keep: set("import_statement", "lexical_declaration", "variable_declaration",
			"type_alias_declaration", "public_field_definition", "abstract_method_signature", "function_signature"),
		placeholder:    bracePlaceholder,
		hoverableQuery: `[(identifier) (property_identifier) (type_identifier)] @hoverable`,
		scopeQuery: `
(program) @local.scope
(function_declaration) @local.scope
(generator_function_declaration) @local.scope
(function_expression) @local.scope
(arrow_function) @local.scope
(method_definition) @local.scope
(class_declaration) @local.scope
(abstract_class_declaration) @local.scope
(statement_block) @local.scope

(function_declaration name: (identifier) @local.definition.function)
(generator_function_declaration name: (identifier) @local.definition.function)
(class_declaration name: (type_identifier) @local.definition.class)
(abstract_class_declaration name: (type_identifier) @local.definition.class)
(method_definition name: (property_identifier) @local.definition.method)
(interface_declaration name: (type_identifier) @local.definition.interface)
(type_alias_declaration name: (type_identifier) @local.definition.type)
(enum_declaration name: (identifier) @local.definition.enum)
(variable_declarator name: (identifier) @local.definition.variable)
(required_parameter pattern: (identifier) @local.definition.variable)
(optional_parameter pattern: (identifier) @local.definition.variable)
(arrow_function parameter: (identifier) @local.definition.variable)
(import_specifier name: (identifier) @local.definition.import)
(import_clause (identifier) @local.definition.import)

(identifier) @local.reference
(type_identifier) @local.reference
`,
	}
}

// ---------- Rust ----------

func rustLanguage() *ruleLanguage {
	return &ruleLanguage{
		name:       "rust",
		ids:        []string{"rs"},
		extensions: []string{".rs"},
		entities: map[string]entityRule{
			"function_item":           {kind: "function", role: roleLeaf},
			"function_signature_item": {kind: "function", role: roleWhole},
			"struct_item":             {kind: "struct", role: roleWhole},
			"enum_item":               {kind: "enum", role: roleWhole},
			"trait_item":              {kind: "trait", role: roleContainer},
			"impl_item":               {kind: "impl", role: roleContainer, nameField: "type"},
			"mod_item":                {kind: "module", role: roleContainer},
		},
		keep:           set("use_declaration", "const_item", "static_item", "type_item", "macro_definition"),
		placeholder:    bracePlaceholder,
		hoverableQuery: `[(identifier) (field_identifier) (type_identifier)] @hoverable`,
		scopeQuery: `
(source_file) @local.scope
(function_item) @local.scope
(closure_expression) @local.scope
(block) @local.scope
(impl_item) @local.scope
(trait_item) @local.scope
(mod_item) @local.scope

(function_item name: (identifier) @local.definition.function)
(function_signature_item name: (identifier) @local.definition.function)
(struct_item name: (type_identifier) @local.definition.struct)
(enum_item name: (type_identifier) @local.definition.enum)
(trait_item name: (type_identifier) @local.definition.trait)
(mod_item name: (identifier) @local.definition.module)
(type_item name: (type_identifier) @local.definition.type)
(const_item name: (identifier) @local.definition.constant)
(static_item name: (identifier) @local.definition.constant)
(let_declaration pattern: (identifier) @local.definition.variable)
(parameter pattern: (identifier) @local.definition.variable)
(closure_parameters (identifier) @local.definition.variable)

(identifier) @local.reference
(type_identifier) @local.reference
`,
	}
}

// ---------- Java ----------

func javaLanguage() *ruleLanguage {
	return &ruleLanguage{
		name:       "java",
		extensions: []string{".java"},
		entities: map[string]entityRule{
			"class_declaration":       {kind: "class", role: roleContainer},
			"interface_declaration":   {kind: "interface", role: roleContainer},
			"enum_declaration":        {kind: "enum", role: roleContainer},
			"record_declaration":      {kind: "class", role: roleContainer},
			"method_declaration":      {kind: "method", role: roleLeaf},
			"constructor_declaration": {kind: "method", role: roleLeaf},
		},
		keep:           set("package_declaration", "import_declaration", "field_declaration", "constant_declaration"),
		placeholder:    bracePlaceholder,
		hoverableQuery: `[(identifier) (type_identifier)] @hoverable`,
		scopeQuery: `
(program) @local.scope
(class_declaration) @local.scope
(interface_declaration) @local.scope
(enum_declaration) @local.scope
(record_declaration) @local.scope
(method_declaration) @local.scope
(constructor_declaration) @local.scope
(lambda_expression) @local.scope
(block) @local.scope

(class_declaration name: (identifier) @local.definition.class)
(interface_declaration name: (identifier) @local.definition.interface)
(enum_declaration name: (identifier) @local.definition.enum)
(record_declaration name: (identifier) @local.definition.class)
(method_declaration name: (identifier) @local.definition.method)
(formal_parameter name: (identifier) @local.definition.variable)
(variable_declarator name: (identifier) @local.definition.variable)

(identifier) @local.reference
(type_identifier) @local.reference
`,
	}
}
