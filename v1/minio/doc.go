// Package minio adapts an S3-compatible object store into a dataset.Source.
//
// Bootstrap jobs usually mount the dataset into the container image, but
// larger deployments keep datasets and embedding files in a bucket. With
// this package wired in, the bootstrap runner opens DATASET and
// EMBEDDINGS_FILE as object keys in MINIO_BUCKET. Absent objects surface as
// fs.ErrNotExist, matching the filesystem source's contract for optional
// embeddings.
//
// Configuration comes from the environment:
//
//	MINIO_ENDPOINT           host:port of the endpoint
//	MINIO_ACCESS_KEY_ID      credentials
//	MINIO_SECRET_ACCESS_KEY  credentials
//	MINIO_USE_SSL            default false
//	MINIO_REGION             optional
//	MINIO_BUCKET             bucket name, default "datasets"
package minio
