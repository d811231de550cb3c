/*
Concurrent binary search tree over uint32 keys, built by many writers at once.

## Terminology

slot: one of a node's two child positions (left or right). a slot starts empty and is filled at most once; it is never cleared or reassigned while writers are running

frontier node: a node with at least one empty slot. only frontier nodes are ever locked

tree: the root slot plus every node reachable from it. each node has exactly one parent (or is the root)

## Ordering

Values less than or equal to a node's value go to its left subtree, greater values go right. Duplicate keys are therefore legal and always end up on the left; lookups must keep scanning left to find every match.

## Insertion protocol

A writer walks down from the root. For each node it picks the slot its value routes to:

- if the slot is occupied it follows the link without taking any lock. occupied slots never change, so the pointer it read stays valid
- if the slot looks empty it takes the node's lock and checks again. still empty: it installs the new leaf and unlocks. filled in the meantime: it unlocks and keeps descending into the child that beat it

Locks are held for a single check-and-store and never across a descent, so there is no lock ordering to get wrong and no deadlock. Every lost race moves the writer one level further down a finite tree, so it cannot livelock either.

## Lifecycle

Build seeds the root with a single sequential insert, fans the remaining keys out to a pool of workers, and returns once all of them are done. Only then may VerifyAndRelease run: it reads without locks and tears the tree down.
*/
package bst
