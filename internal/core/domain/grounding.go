package domain

import "strings"

// Grounding namespaces seen in statement db_refs.
const (
	NamespaceHGNC     = "HGNC"
	NamespaceUniProt  = "UP"
	NamespaceCHEBI    = "CHEBI"
	NamespaceCHEMBL   = "CHEMBL"
	NamespacePUBCHEM  = "PUBCHEM"
	NamespaceHMSLINCS = "HMS-LINCS"
	NamespaceMESH     = "MESH"
)

// namespacePriority orders namespaces from most to least authoritative
// when picking an agent's preferred grounding.
var namespacePriority = []string{
	NamespaceHGNC,
	NamespaceUniProt,
	NamespaceCHEBI,
	NamespaceCHEMBL,
	NamespacePUBCHEM,
	NamespaceHMSLINCS,
	NamespaceMESH,
}

// identifiersPrefixes maps namespaces to identifiers.org registry prefixes.
var identifiersPrefixes = map[string]string{
	NamespaceHGNC:    "hgnc",
	NamespaceUniProt: "uniprot",
	NamespaceCHEBI:   "CHEBI",
	NamespaceCHEMBL:  "chembl.compound",
	NamespacePUBCHEM: "pubchem.compound",
	NamespaceMESH:    "mesh",
}

// IdentifiersURL returns the identifiers.org URL for a grounding, or ""
// when the namespace has no registry entry (e.g. HMS-LINCS).
func IdentifiersURL(namespace, id string) string {
	prefix, ok := identifiersPrefixes[namespace]
	if !ok {
		return ""
	}
	// CHEBI identifiers usually carry their prefix already.
	if namespace == NamespaceCHEBI {
		return "https://identifiers.org/CHEBI:" + strings.TrimPrefix(id, "CHEBI:")
	}
	return "https://identifiers.org/" + prefix + ":" + id
}
