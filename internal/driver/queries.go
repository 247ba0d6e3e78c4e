package driver

const (
	LoadNodesQuery = `
		UNWIND $rows AS row
		MERGE (n:Entity {value: row.value, namespace: row.namespace})
		SET n.kind = row.kind,
			n.name = row.name,
			n.datasource = row.datasource,
			n += row.attributes
		RETURN count(n) AS nodes
	`

	// CREATE, not MERGE: parallel assertions stay parallel relationships.
	LoadEdgesQuery = `
		UNWIND $rows AS row
		MATCH (source:Entity {value: row.source_value, namespace: row.source_namespace})
		MATCH (target:Entity {value: row.target_value, namespace: row.target_namespace})
		CREATE (source)-[e:RELATES_TO {label: row.label, datasource: row.datasource}]->(target)
		SET e += row.attributes
		RETURN count(e) AS edges
	`

	CountNodesQuery = `
		MATCH (n:Entity)
		RETURN count(n) AS count
	`

	CountEdgesQuery = `
		MATCH ()-[e:RELATES_TO]->()
		RETURN count(e) AS count
	`
)
